package httpapi

// RescoreStatus is the last-known state of the batch rescore loop,
// kept in an atomic.Value and served over the API.
type RescoreStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastCount int    `json:"last_count"`
	Running   bool   `json:"running"`
}
