package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Create projects from directory templates"
	MsgVersionShort     = "Print version information"
	MsgVersionLong      = "Print detailed version information including commit hash and build date"
	MsgListShort        = "List available templates"
	MsgListLong         = "List shows local templates first, then the bundled ones they do not shadow."
	MsgCreateShort      = "Create a new project from a template"
	MsgAddShort         = "Add a template from a directory or git repository"
	MsgInfoShort        = "Show details about a template"
	MsgInfoLong         = "Info prints a template's variables, conditional files and post-create hooks."
	MsgRemoveShort      = "Remove a local template"
	MsgRemoveLong       = "Remove deletes a template from the local templates directory. Bundled templates cannot be removed; add a local template with the same name to shadow one."
	MsgValidateShort    = "Check a template directory for problems"
	MsgConfigShort      = "Manage global variable defaults"
	MsgConfigSetShort   = "Set a global default"
	MsgConfigGetShort   = "Print a global default"
	MsgConfigListShort  = "List global defaults"
	MsgConfigUnsetShort = "Remove a global default"
	MsgConfigResetShort = "Delete the config file"
	MsgConfigPathShort  = "Print the config file path"
	MsgCompletionShort  = "Generate shell completion script"

	// Status messages
	MsgCreatingFrom  = "Creating project from [name]%s[/name]"
	MsgProgressTitle = "Rendering files"

	// Version output
	MsgVersionFormat = "scaffold version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrInitPaths = "failed to initialize paths: %w"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagTemplatesDir = "Local templates directory (default ./.templates)"
	MsgFlagFormat       = "Output format: auto, text, json or yaml"
	MsgFlagOutput       = "Directory to create the project in"
	MsgFlagVar          = "Set a variable as key=value (repeatable)"
	MsgFlagYes          = "Use defaults for every missing value instead of prompting"
	MsgFlagDryRun       = "Show what would be created without writing anything"
	MsgFlagNoHooks      = "Do not run post-create hooks"
	MsgFlagReadme       = "Also print the template's README"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	//go:embed msgs/create-example.txt
	msgCreateExampleRaw string
	MsgCreateExample    = strings.TrimRight(msgCreateExampleRaw, "\n")

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/info-example.txt
	msgInfoExampleRaw string
	MsgInfoExample    = strings.TrimRight(msgInfoExampleRaw, "\n")

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/config-example.txt
	msgConfigExampleRaw string
	MsgConfigExample    = strings.TrimRight(msgConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
