package appointments

import (
	"medisync-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryStatusHasPresentation(t *testing.T) {
	for _, status := range models.AppointmentStatuses {
		_, hasLabel := statusLabels[status]
		_, hasColor := statusColors[status]
		assert.True(t, hasLabel, "missing label for %s", status)
		assert.True(t, hasColor, "missing color for %s", status)
	}
}

func TestPresentation(t *testing.T) {
	tests := []struct {
		status string
		label  string
		color  string
	}{
		{"scheduled", "Planifié", "bg-yellow-100 text-yellow-800"},
		{"in_progress", "En consultation", "bg-purple-100 text-purple-800"},
		{"cancelled_by_practitioner", "Annulé par le praticien", "bg-red-100 text-red-800"},
		{"no_show", "Absent", "bg-gray-100 text-gray-800"},
		{"rescheduled", "rescheduled", "bg-gray-100 text-gray-800"},
		{"", "Inconnu", "bg-gray-100 text-gray-800"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			presentation := Presentation(tt.status)
			assert.Equal(t, tt.label, presentation.Label)
			assert.Equal(t, tt.color, presentation.Color)
		})
	}
}

func TestCatalogKeepsLifecycleOrder(t *testing.T) {
	catalog := Catalog()
	assert.Len(t, catalog, 8)
	assert.Equal(t, models.AppointmentStatusScheduled, catalog[0].Status)
	assert.Equal(t, models.AppointmentStatusNoShow, catalog[7].Status)
}
