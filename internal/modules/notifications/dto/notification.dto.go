package dto

type CreateNotificationRequest struct {
	Message       string `json:"message" validate:"notblank,max=1000"`
	UtilisateurID string `json:"utilisateurId" validate:"required,mongodb"`
	Type          string `json:"type" validate:"max=50"`
	ObjetID       string `json:"objetId"`
}

// RelanceRequest notificationId et type sont acceptés pour compatibilité, non utilisés
type RelanceRequest struct {
	UtilisateurID  string `json:"utilisateurId" validate:"required"`
	NotificationID string `json:"notificationId"`
	Type           string `json:"type"`
	Message        string `json:"message"`
}

// DigestResult bilan d'un passage du digest
type DigestResult struct {
	Utilisateurs  int `json:"utilisateurs"`
	EmailsEnvoyes int `json:"emailsEnvoyes"`
	Notifications int `json:"notifications"`
}
