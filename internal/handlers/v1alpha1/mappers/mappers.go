// Package mappers converts the internal task model to the public API types.
package mappers

import (
	api "github.com/flytipwatch/impact-planner/api/v1alpha1"
	"github.com/flytipwatch/impact-planner/internal/tasks"
)

func TaskStatusToApi(task tasks.Task) api.TaskStatusReply {
	reply := api.TaskStatusReply{
		TaskId: task.ID.String(),
		Status: api.TaskStatus(task.Status),
		Error:  task.Error,
	}
	if task.Result != nil {
		result := ImpactResultToApi(*task.Result)
		reply.Result = &result
	}
	return reply
}

func ImpactResultToApi(result tasks.Result) api.ImpactResult {
	return api.ImpactResult{
		CrimeChange:      result.Metrics.CrimeChangePct,
		DeprivationIndex: result.Metrics.DeprivationIndex,
		HousePriceImpact: result.Metrics.HousePriceImpactPct,
		EnvironmentalImpact: api.EnvironmentalImpact{
			Co2Emissions:  result.Metrics.Co2EmissionsKg,
			WasteVolume:   result.Metrics.WasteVolumeTonnes,
			RecyclingRate: result.Metrics.RecyclingRatePct,
		},
		CouncilInfo: api.CouncilInfo{
			Name:            result.Council.Name,
			ReportingUrl:    result.Council.ReportingURL,
			ContactNumber:   result.Council.ContactNumber,
			Recommendations: result.Council.Recommendations,
		},
		Summary:  result.Summary,
		ImageUrl: result.ImageURL,
	}
}
