package config

// defaultYAML seeds a first run when no config ships alongside the
// binary. It mirrors config/config.yml.
const defaultYAML = `app:
  port: 38471
  data_dir: "."
  log_level: info

rescore:
  interval_seconds: 3600
  parallelism: 4

staleness:
  enabled: true
  timeout_seconds: 5
  cache_hours: 24
  workers: 8
  host_req_per_sec: 1

profile:
  target_seniority: ["senior", "staff", "lead"]
  filtering_aggression: moderate

  domain_keywords:
    "quality engineering": 10
    "test automation": 8
    "reliability": 6
    "platform": 5
    "infrastructure": 5
    "developer tools": 4

  role_type_keywords:
    engineering_leadership:
      points: 20
      keywords: ["engineering manager", "director of engineering", "head of engineering", "vp of engineering"]
    product_leadership:
      points: 18
      keywords: ["product manager", "director of product", "head of product", "vp of product"]
    quality_engineering:
      points: 20
      keywords: ["qa", "quality", "test", "sdet"]
    platform_engineering:
      points: 15
      keywords: ["platform engineer", "infrastructure engineer", "devops", "sre"]

  location_preferences:
    remote_keywords: ["remote", "work from home", "distributed"]
    hybrid_keywords: ["hybrid"]
    cities: ["austin", "denver"]
    regions: ["texas", "colorado"]
    remote_weight: 15
    hybrid_weight: 12

  hard_filter_keywords:
    seniority_blocks: ["junior", "intern", "coordinator", "entry level"]
    seniority_exceptions: ["senior coordinator"]
    department_blocks: ["human resources", "recruiter", "finance", "accounting", "legal", "paralegal", "sales", "account executive", "administrative"]
    c_level_overrides: ["chief", "vp", "vice president", "head of"]
    associate_exceptions: ["director", "vp", "principal", "chief"]

  context_filters:
    software_engineering_exceptions: ["hardware", "embedded", "firmware"]
    contract_min_seniority_score: 25

  company_stage_keywords:
    "series a": 10
    "series b": 12
    "series c": 12
    "growth": 10
    "public": 8
    "startup": 8

  technical_keywords:
    "python": 3
    "go": 3
    "kubernetes": 2
    "aws": 2
    "ci/cd": 2

  avoid_keywords: ["clearance required", "crypto", "gambling"]

  hardware_boost: 10
  hardware_confidence_min: 0.5
  software_penalty: -20

  company_lists:
    hardware: []
    software: []
    both: []

  company_overrides: {}

  fuzzy_matching:
    enabled: false
    min_similarity: 0.85
`
