package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrInvalidInput    = errors.New("entrée invalide")
	ErrUnauthorized    = errors.New("non autorisé")
	ErrInvalidConfig   = errors.New("configuration invalide")
	ErrUnknownDocClass = errors.New("classe de document inconnue")

	// Erreurs typées des appels externes de corroboration.
	// Chaque échec reste confiné au CorroborationResult concerné.
	ErrLookupTimeout     = errors.New("délai dépassé lors de l'appel externe")
	ErrLookupNotFound    = errors.New("entité introuvable dans le registre")
	ErrLookupRateLimited = errors.New("registre externe: quota d'appels dépassé")
	ErrLookupNetwork     = errors.New("erreur réseau lors de l'appel externe")
)
