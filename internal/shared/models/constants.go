package models

// Rôles applicatifs
const (
	RoleAdmin         = "ADMIN"
	RoleChefProjet    = "CHEF_PROJET"
	RolePiloteQualite = "PILOTE_QUALITE"
)

var Roles = []string{RoleAdmin, RoleChefProjet, RolePiloteQualite}

// Statuts d'une fiche qualité
const (
	StatutFicheEnCours   = "EN_COURS"
	StatutFicheTerminee  = "TERMINEE"
	StatutFicheValidee   = "VALIDEE"
	StatutFicheRejetee   = "REJETEE"
	StatutFicheEnAttente = "EN_ATTENTE"
	StatutFicheBloquee   = "BLOQUEE"
)

// Types de fiche qualité
const (
	TypeFicheControle     = "CONTROLE"
	TypeFicheAudit        = "AUDIT"
	TypeFicheAmelioration = "AMELIORATION"
	TypeFicheFormation    = "FORMATION"
	TypeFicheMaintenance  = "MAINTENANCE"
	TypeFicheAutre        = "AUTRE"
)

// États d'avancement d'un suivi
const (
	EtatEnCours   = "EN_COURS"
	EtatTermine   = "TERMINE"
	EtatBloque    = "BLOQUE"
	EtatEnAttente = "EN_ATTENTE"
	EtatValide    = "VALIDE"
)

// Statuts d'un formulaire obligatoire
const (
	FormulaireEnAttente = "EN_ATTENTE"
	FormulaireSoumis    = "SOUMIS"
	FormulaireEnRetard  = "EN_RETARD"
	FormulaireAnnule    = "ANNULE"
)

// Priorités
const (
	PrioriteHaute   = "HAUTE"
	PrioriteMoyenne = "MOYENNE"
	PrioriteBasse   = "BASSE"
	PrioriteUrgente = "URGENTE"
)

// Statuts d'une tâche
const (
	TacheAFaire   = "A_FAIRE"
	TacheEnCours  = "EN_COURS"
	TacheTerminee = "TERMINEE"
	TacheEnRetard = "EN_RETARD"
)

// Actions tracées dans l'historique
const (
	ActionCreation     = "CREATION"
	ActionModification = "MODIFICATION"
	ActionSuppression  = "SUPPRESSION"
	ActionConnexion    = "CONNEXION"
	ActionDeconnexion  = "DECONNEXION"
	ActionExport       = "EXPORT"
)

// Entités tracées dans l'historique
const (
	EntiteFicheQualite = "FICHE_QUALITE"
	EntiteFicheSuivi   = "FICHE_SUIVI"
	EntiteFicheProjet  = "FICHE_PROJET"
	EntiteFormulaire   = "FORMULAIRE_OBLIGATOIRE"
	EntiteUtilisateur  = "UTILISATEUR"
	EntiteNomenclature = "NOMENCLATURE"
	EntiteTache        = "TACHE"
	EntiteFichier      = "FICHIER"
	EntiteRapport      = "RAPPORT"
)

// Types de notification
const (
	NotifFicheQualite       = "FICHE_QUALITE"
	NotifFicheSuivi         = "FICHE_SUIVI"
	NotifFormulaire         = "FORMULAIRE_OBLIGATOIRE"
	NotifFormulaireRetard   = "FORMULAIRE_RETARD"
	NotifFormulaireEcheance = "FORMULAIRE_ECHEANCE"
	NotifCompte             = "COMPTE"
	NotifTache              = "TACHE"
)
