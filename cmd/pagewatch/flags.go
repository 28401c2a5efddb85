package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	GlobalConfigFile string
	Mode             string
	TargetURL        string
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Mode to run the tool: watch or batch (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	targetURL := flag.String("url", "", "Target URL to watch (overrides scraper_config.target_url if set)")
	targetURLAlias := flag.String("u", "", "Alias for -url")

	flag.Parse()

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	if *targetURL != "" {
		flags.TargetURL = *targetURL
	} else if *targetURLAlias != "" {
		flags.TargetURL = *targetURLAlias
	}

	if flags.Mode != "" && flags.Mode != "watch" && flags.Mode != "batch" {
		fmt.Fprintf(os.Stderr, "[FATAL] invalid --mode %q (watch or batch)\n", flags.Mode)
		os.Exit(1)
	}

	return flags
}
