// Package cli implements the sysmon command-line interface.
//
// The root command runs the dashboard. Subcommands cover the things you
// want outside of it:
//
//	sysmon                 - Live dashboard (or plain lines when piped)
//	sysmon snapshot        - Print one sample and exit
//	sysmon config          - Print the effective configuration
//	sysmon init            - Create a .sysmon.yaml config
//	sysmon version         - Print version information
//	sysmon completion      - Generate shell completion scripts
//
// Configuration is loaded from --config, ./.sysmon.yaml or
// ~/.config/sysmon/config.yaml, then flags that were set explicitly
// override it.
package cli
