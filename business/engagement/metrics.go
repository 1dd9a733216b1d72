package engagement

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActivationPathAssignedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activation_path_assigned_total",
			Help: "Count of activation path assignments by path.",
		},
		[]string{"path"},
	)

	MilestonesCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activation_milestones_completed_total",
			Help: "Count of completed milestones by milestone name.",
		},
		[]string{"milestone"},
	)

	ReEngagementFiredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "re_engagement_triggers_fired_total",
			Help: "Count of re-engagement triggers fired by trigger id.",
		},
		[]string{"trigger"},
	)

	NudgesServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nudges_served_total",
			Help: "Count of nudges served by nudge id.",
		},
		[]string{"nudge"},
	)
)

func init() {
	prometheus.MustRegister(
		ActivationPathAssignedTotal,
		MilestonesCompletedTotal,
		ReEngagementFiredTotal,
		NudgesServedTotal,
	)
}
