package constants

// CLIBinaryName is how user-facing output refers to the tool.
const CLIBinaryName = "cfglint"

// ConfigFileName and HiddenConfigFileName are the candidate config
// locations, tried in order; the hidden name is the canonical write
// target.
const (
	ConfigFileName       = "cfglint.json"
	HiddenConfigFileName = ".cfglint.json"
)

// LatestConfigVersion is the config format current builds write.
const LatestConfigVersion = "v2"
