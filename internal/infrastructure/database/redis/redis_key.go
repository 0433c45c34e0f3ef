package redis

import (
	"fmt"
	"regexp"
	"strings"
)

const keyPrefix = "qualite_pro_"

var validKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_:\-.@]+$`)

// RedisKeyGenerator génère et valide les clés Redis selon les conventions du projet
type RedisKeyGenerator struct{}

func NewRedisKeyGenerator() *RedisKeyGenerator {
	return &RedisKeyGenerator{}
}

// RedisKeyPattern Pattern: qualite_pro_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string // auth, cache
	Context string // blacklist, login, nomenclature
	TTL     int    // TTL en secondes, 0 = pas d'expiration
}

// Seuls les patterns réellement utilisés sont listés ici
var RedisKeyPatterns = map[string]RedisKeyPattern{
	"auth_blacklist":           {Domain: "auth", Context: "blacklist", TTL: 86400},
	"auth_login_attempts":      {Domain: "auth", Context: "login", TTL: 900},
	"cache_nomenclatures":      {Domain: "cache", Context: "nomenclature", TTL: 3600},
	"cache_nomenclature_types": {Domain: "cache", Context: "nomenclature_types", TTL: 3600},
}

// GenerateKey génère une clé : qualite_pro_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("%s%s_%s", keyPrefix, pattern.Domain, pattern.Context)
	if len(identifier) == 0 {
		return prefix, nil
	}

	key := fmt.Sprintf("%s:%s", prefix, strings.Join(identifier, "_"))
	if err := rkg.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}
	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}
	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}
	if !strings.HasPrefix(key, keyPrefix) {
		return fmt.Errorf("clé doit commencer par '%s': %s", keyPrefix, key)
	}
	return nil
}

// GenerateWildcardPattern pattern de recherche pour un domaine/context
func (rkg *RedisKeyGenerator) GenerateWildcardPattern(patternName string) (string, error) {
	prefix, err := rkg.GenerateKey(patternName)
	if err != nil {
		return "", err
	}
	return prefix + ":*", nil
}
