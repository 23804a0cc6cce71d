package usecase

import (
	"math"

	"github.com/JibinB02/pehlahath/internal/entity"
)

// VolunteerStats is a point-in-time snapshot over the full task
// collection. Hours are person-hours: task hours multiplied by volunteer
// headcount.
type VolunteerStats struct {
	ActiveVolunteers int     `json:"activeVolunteers"`
	HoursContributed float64 `json:"hoursContributed"`
	TasksCompleted   int     `json:"tasksCompleted"`
	ActiveLocations  int     `json:"activeLocations"`
}

// ComputeStats derives the snapshot in one pass. Active means neither
// completed nor cancelled. A volunteer on several active tasks counts
// once; locations compare by exact string. Completed tasks contribute
// actual hours (falling back to the estimate) per volunteer, in-progress
// tasks contribute estimated hours per volunteer.
func ComputeStats(tasks []entity.VolunteerTask) VolunteerStats {
	activeVolunteers := make(map[int]struct{})
	activeLocations := make(map[string]struct{})
	var hours float64
	var completed int

	for _, task := range tasks {
		if !task.Status.Terminal() {
			for _, v := range task.Volunteers {
				activeVolunteers[v] = struct{}{}
			}
			activeLocations[task.Location] = struct{}{}
		}

		switch task.Status {
		case entity.StatusCompleted:
			completed++
			taskHours := task.DurationHours
			if task.ActualHours != nil {
				taskHours = *task.ActualHours
			}
			hours += taskHours * float64(len(task.Volunteers))
		case entity.StatusInProgress:
			hours += task.DurationHours * float64(len(task.Volunteers))
		}
	}

	return VolunteerStats{
		ActiveVolunteers: len(activeVolunteers),
		HoursContributed: roundToTenth(hours),
		TasksCompleted:   completed,
		ActiveLocations:  len(activeLocations),
	}
}

// roundToTenth rounds half-up at the tenths digit.
func roundToTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
