// Package analytics содержит чистые функции разбора заголовков запроса
// для построения записи о переходе: IP клиента, User-Agent, геоданные и реферер.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// clientIPHeaders перечисляет заголовки прокси и CDN в порядке приоритета
var clientIPHeaders = []string{
	"X-Real-IP",
	"X-Forwarded-For",
	"X-Client-IP",
	"X-Cluster-Client-IP",
	"CF-Connecting-IP",
	"Fastly-Client-IP",
	"True-Client-IP",
	"X-Forwarded",
	"Forwarded-For",
	"Forwarded",
}

// ClientIPHeaders возвращает копию списка заголовков, из которых извлекается IP клиента
func ClientIPHeaders() []string {
	out := make([]string, len(clientIPHeaders))
	copy(out, clientIPHeaders)
	return out
}

// ClientIP возвращает IP клиента из первого непустого заголовка списка.
// Для списков через запятую берётся первый элемент. Пустая строка означает, что IP нет.
func ClientIP(h http.Header) string {
	for _, name := range clientIPHeaders {
		value := h.Get(name)
		if value == "" {
			continue
		}
		first, _, _ := strings.Cut(value, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return ""
}

// Hasher необратимо хеширует IP-адреса (SHA-256, hex)
type Hasher struct {
	salt string
}

// NewHasher создаёт Hasher с солью уровня процесса; пустая соль даёт чистый SHA-256(ip)
func NewHasher(salt string) Hasher {
	return Hasher{salt: salt}
}

// Hash возвращает hex-хеш IP или nil, если IP отсутствует
func (h Hasher) Hash(ip string) *string {
	if ip == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(h.salt + ip))
	digest := hex.EncodeToString(sum[:])
	return &digest
}

// HashIP хеширует IP без соли
func HashIP(ip string) *string {
	return Hasher{}.Hash(ip)
}
