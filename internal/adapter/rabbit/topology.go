package rabbit

import "fmt"

const (
	DashboardExchange = "dashboard_topic"
	exchangeKind      = "topic"
)

func reloadedKey(dataset string) string {
	return fmt.Sprintf("dataset.reloaded.%s", dataset)
}

func reloadKey(dataset string) string {
	return fmt.Sprintf("dataset.reload.%s", dataset)
}

func reloadQueue(service, dataset string) string {
	return fmt.Sprintf("%s.%s.reload", service, dataset)
}
