package httpapi

import "net/http"

// NewMux returns the raw mux so main() can wrap it in middleware.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, DeleteJob: d.DeleteJob}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodPost: jh.Create,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: jh.DeleteByPath, // expects /jobs/{id}
	}))

	// Rescore
	rh := RescoreHandler{
		CfgVal:        d.CfgVal,
		RescoreStatus: d.RescoreStatus,
		Gate:          d.RescoreGate,
		Hub:           d.Hub,
		RunRescore:    d.RunRescore,
	}
	mux.HandleFunc("/rescore", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))
	mux.HandleFunc("/rescore/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))

	// Digest
	dh := DigestHandler{DB: d.DB, CfgVal: d.CfgVal, Validator: d.Validator}
	mux.HandleFunc("/digest", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Digest,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Company overrides
	oh := OverridesHandler{Overrides: d.Overrides}
	mux.HandleFunc("/companies/overrides", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: oh.List,
		http.MethodPut: oh.Put,
	}))
	mux.HandleFunc("/companies/overrides/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: oh.DeleteByPath, // expects /companies/overrides/{name}
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health + maintenance
	mux.HandleFunc("/health", HealthHandler{}.Health)
	mux.HandleFunc("/db/checkpoint", DBHandler{DB: d.DB}.Checkpoint)

	return mux
}
