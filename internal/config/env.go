package config

import "strings"

// envKeyReplacer turns "years.newest" into CHATSTATS_YEARS_NEWEST
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")
