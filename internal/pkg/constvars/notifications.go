package constvars

// User-facing notification texts. The product UI is French.
const (
	NotifySignUpSuccess           = "Compte créé avec succès! Vérifiez votre email."
	NotifySignUpFailed            = "Erreur lors de l'inscription"
	NotifySignInSuccess           = "Connexion réussie!"
	NotifySignInFailed            = "Erreur lors de la connexion"
	NotifySignOutSuccess          = "Déconnexion réussie!"
	NotifySignOutFailed           = "Erreur lors de la déconnexion"
	NotifyAdminWelcome            = "Bienvenue dans l'administration"
	NotifyAdminRightsMissing      = "Vous n'avez pas les droits d'administrateur"
	NotifyAuthInitFailed          = "Erreur lors de l'initialisation de l'authentification"
	NotifyPrivilegeCheckFailed    = "Impossible de vérifier les droits d'administrateur"
	NotifyProfileFetchFailed      = "Erreur lors de la récupération du profil utilisateur"
	NotifyAppointmentsFetchFailed = "Erreur lors de la récupération des rendez-vous"
	NotifyAppointmentCreated      = "Rendez-vous créé"
	NotifyAppointmentCreateFailed = "Erreur lors de la création du rendez-vous"
	NotifyStatusUpdated           = "Statut du rendez-vous mis à jour"
	NotifyStatusUpdateFailed      = "Erreur lors de la mise à jour du statut"
	NotifyAppointmentDeleted      = "Rendez-vous supprimé"
	NotifyAppointmentDeleteFailed = "Erreur lors de la suppression du rendez-vous"
)
