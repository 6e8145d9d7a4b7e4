package company

// Built-in signal vocabularies. Curated list membership is the
// highest-precision signal; name patterns and keyword cues are
// heuristics tuned against scraped postings.

var hardwareNameKeywords = []string{
	"semiconductor", "robotics", "hardware", "devices", "electronics",
	"photonics", "aerospace", "automotive", "sensors", "optics",
	"instruments", "silicon", "micro", "chip",
}

var softwareNameKeywords = []string{
	"software", "saas", "cloud", "analytics", "digital", "cyber",
	"labs", "platform", "apps", "data", "ai",
}

var hardwareVocab = []string{
	"embedded", "firmware", "fpga", "asic", "pcb", "rf",
	"hardware", "robotics", "mechanical", "electrical engineering",
	"manufacturing", "semiconductor", "iot", "sensors", "silicon",
	"circuit", "soc", "chip design",
}

var softwareVocab = []string{
	"software", "backend", "frontend", "full stack", "web", "mobile",
	"cloud", "saas", "devops", "microservices", "api", "distributed systems",
	"machine learning", "data pipeline", "kubernetes",
}

var curatedHardware = []string{
	"nvidia", "intel", "amd", "qualcomm", "broadcom", "micron",
	"texas instruments", "analog devices", "asml", "applied materials",
	"lam research", "skyworks", "onsemi", "infineon", "nxp",
	"boston dynamics", "spacex", "anduril",
}

var curatedSoftware = []string{
	"google", "meta", "stripe", "datadog", "snowflake", "mongodb",
	"atlassian", "shopify", "salesforce", "twilio", "cloudflare",
	"gitlab", "hashicorp", "databricks", "figma", "notion",
}

var curatedBoth = []string{
	"apple", "amazon", "microsoft", "tesla", "samsung", "sony",
	"cisco", "ibm", "dell", "hp",
}
