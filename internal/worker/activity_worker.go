package worker

import (
	"github.com/spec-kit/jobboard-service/internal/service"
)

// StartActivityWorker registers the activity audit handlers.
func StartActivityWorker(activity *service.ActivityService) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}
