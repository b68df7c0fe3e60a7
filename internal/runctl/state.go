package runctl

// State is a step of the run lifecycle
type State string

const (
	StateIdle            State = "idle"
	StateConfigWritten   State = "config_written"
	StateRunnerInvoked   State = "runner_invoked"
	StateRunnerSucceeded State = "runner_succeeded"
	StateRunnerFailed    State = "runner_failed"
	StateReportGenerated State = "report_generated"
	StateTerminated      State = "terminated"
)
