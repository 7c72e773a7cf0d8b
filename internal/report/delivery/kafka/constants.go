package kafka

// Default topics and group. Deployments override them through kafka.* config.
const (
	// Consumer Topics
	TopicReportRequests = "reporting.report.requests"

	// Producer Topics
	TopicReportLifecycle = "reporting.report.lifecycle"
)

const (
	ConsumerGroupReportRequests = "reporting-consumer-requests"
)
