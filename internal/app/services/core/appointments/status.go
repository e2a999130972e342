package appointments

import "medisync-service/internal/app/models"

const (
	unknownStatusLabel = "Inconnu"
	neutralStatusColor = "bg-gray-100 text-gray-800"
)

var statusLabels = map[models.AppointmentStatus]string{
	models.AppointmentStatusScheduled:               "Planifié",
	models.AppointmentStatusConfirmed:               "Confirmé",
	models.AppointmentStatusArrived:                 "Patient arrivé",
	models.AppointmentStatusInProgress:              "En consultation",
	models.AppointmentStatusCompleted:               "Terminé",
	models.AppointmentStatusCancelledByPatient:      "Annulé par le patient",
	models.AppointmentStatusCancelledByPractitioner: "Annulé par le praticien",
	models.AppointmentStatusNoShow:                  "Absent",
}

var statusColors = map[models.AppointmentStatus]string{
	models.AppointmentStatusScheduled:               "bg-yellow-100 text-yellow-800",
	models.AppointmentStatusConfirmed:               "bg-blue-100 text-blue-800",
	models.AppointmentStatusArrived:                 "bg-indigo-100 text-indigo-800",
	models.AppointmentStatusInProgress:              "bg-purple-100 text-purple-800",
	models.AppointmentStatusCompleted:               "bg-green-100 text-green-800",
	models.AppointmentStatusCancelledByPatient:      "bg-red-100 text-red-800",
	models.AppointmentStatusCancelledByPractitioner: "bg-red-100 text-red-800",
	models.AppointmentStatusNoShow:                  neutralStatusColor,
}

// LabelFor returns the display label. Unknown values are shown as-is.
func LabelFor(status string) string {
	if label, ok := statusLabels[models.AppointmentStatus(status)]; ok {
		return label
	}
	if status == "" {
		return unknownStatusLabel
	}
	return status
}

func ColorFor(status string) string {
	if color, ok := statusColors[models.AppointmentStatus(status)]; ok {
		return color
	}
	return neutralStatusColor
}

func Presentation(status string) models.AppointmentStatusPresentation {
	return models.AppointmentStatusPresentation{
		Status: models.AppointmentStatus(status),
		Label:  LabelFor(status),
		Color:  ColorFor(status),
	}
}

// Catalog lists every status in lifecycle order.
func Catalog() []models.AppointmentStatusPresentation {
	catalog := make([]models.AppointmentStatusPresentation, 0, len(models.AppointmentStatuses))
	for _, status := range models.AppointmentStatuses {
		catalog = append(catalog, Presentation(string(status)))
	}
	return catalog
}
