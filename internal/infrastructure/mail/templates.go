package mail

import (
	"fmt"
	"strings"
	"time"
)

const signature = "\n\nCordialement,\nSystème de Suivi Qualité"

const (
	SubjectBienvenue        = "Bienvenue sur l'application Qualité Pro"
	SubjectResetPassword    = "Réinitialisation de votre mot de passe"
	SubjectFormulaireRetard = "⚠️ Formulaire obligatoire en retard"
	SubjectEcheanceProche   = "⏰ Échéance proche d'un formulaire obligatoire"
	SubjectDigest           = "📢 Notifications non lues"
	SubjectRelance          = "Relance notification"
)

const dateLayout = "02/01/2006 15:04"

func BienvenueBody(nom, email, motDePasse string) string {
	return fmt.Sprintf("Bonjour %s,\n\nVotre compte a été créé sur l'application Qualité Pro.\n"+
		"Identifiant : %s\nMot de passe temporaire : %s\n\n"+
		"Merci de le modifier dès votre première connexion.", nom, email, motDePasse) + signature
}

func ResetPasswordBody(nom, motDePasse string) string {
	return fmt.Sprintf("Bonjour %s,\n\nVotre mot de passe a été réinitialisé.\n"+
		"Nouveau mot de passe temporaire : %s", nom, motDePasse) + signature
}

func FormulaireRetardBody(nom string, echeance time.Time) string {
	return fmt.Sprintf("Bonjour,\n\nLe formulaire obligatoire '%s' est en retard.\n"+
		"Date d'échéance : %s\n\n"+
		"Veuillez le compléter dans les plus brefs délais.", nom, echeance.Format(dateLayout)) + signature
}

func EcheanceProcheBody(nom string, echeance time.Time) string {
	return fmt.Sprintf("Bonjour,\n\nLe formulaire obligatoire '%s' arrive à échéance le %s.\n\n"+
		"Pensez à le soumettre avant cette date.", nom, echeance.Format(dateLayout)) + signature
}

func DigestBody(messages []string) string {
	var b strings.Builder
	b.WriteString("Bonjour,\n\nVous avez des notifications :\n\n")
	for _, m := range messages {
		b.WriteString("- ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	return b.String()
}

func RelanceBody(message string) string {
	if strings.TrimSpace(message) == "" {
		return "Vous avez une notification en attente"
	}
	return message
}
