package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultRunConfigFile is the persisted configuration read by the test engine
	DefaultRunConfigFile = "cypress.json"
	// DefaultEnvFile is loaded from the project path when present
	DefaultEnvFile = ".env"
	// DefaultProjectFile holds optional e2erun settings
	DefaultProjectFile = "e2erun.yaml"
	// DefaultSpecPattern selects the specs executed by `run`
	DefaultSpecPattern = "integration/simple*.js"
	// DefaultSpecDir is scanned by `list`
	DefaultSpecDir = "integration"
	// DefaultResultsDir is where every run gets its own artifact directory
	DefaultResultsDir = "reports"
	// DefaultReportDir is the output directory of the HTML report
	DefaultReportDir = "mochawesome-report"
	// DefaultReportFilename is the report file name without extension
	DefaultReportFilename = "mochawesome"
	// DefaultReportTitle is used when no timestamp title is available
	DefaultReportTitle = "E2E Test Report"
	// DefaultOutputJSONFile is the last-run summary file name
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the last-run summary directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of concurrent engine processes
	DefaultProcessors = 1
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
)

// DefaultRunnerCommand launches the browser test engine
var DefaultRunnerCommand = []string{"npx", "cypress", "run"}

// DefaultRunnerArgs are appended to the runner command. {specs} and
// {results_dir} are substituted per batch.
var DefaultRunnerArgs = []string{
	"--spec", "{specs}",
	"--reporter", "mochawesome",
	"--reporter-options", "reportDir={results_dir},overwrite=false,html=false,json=true",
}

// DefaultSpecExtensions are the file extensions treated as spec files
var DefaultSpecExtensions = []string{".js", ".ts", ".jsx", ".tsx"}

// DefaultPathsToIgnore are the default directories to ignore when scanning for specs
var DefaultPathsToIgnore = []string{
	"node_modules",
	"fixtures",
	"plugins",
	"support",
	"screenshots",
	"videos",
	"reports",
}
