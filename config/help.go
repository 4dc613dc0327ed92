package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
Ride-hail insights dashboard.

Usage:
  dashboard -mode <ride-dashboard|loan-dashboard> [-config-path config.yaml]
  dashboard -help

Options:
  -mode          Service to run:
                   ride-dashboard  trip request filters, KPI breakdowns and the analytics assistant
                   loan-dashboard  driver loan issued/paid/outstanding scorecards
  -config-path   Path to the config yaml file (default: config.yaml)
  -help          Show this message

Every yaml key can be overridden with an environment variable
(section.key -> SECTION_KEY), e.g. ASSISTANT_PROVIDER=openai.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
