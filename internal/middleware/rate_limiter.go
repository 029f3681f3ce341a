package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"rapifarma/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Las farmacias salen a internet por una sola IP pública por sucursal, así que
// cada límite por IP cubre a todo el personal del local a la vez.
const (
	// loginMaxIntentos por sucursal dentro de loginVentana.
	loginMaxIntentos = 30
	loginVentana     = 5 * time.Minute
)

// ventana is a fixed-window counter per client IP.
type ventana struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// contador tracks windows for one limiter.
type contador struct {
	mu      sync.Mutex
	porIP   map[string]*ventana
	limite  int
	periodo time.Duration
}

func newContador(limite int, periodo time.Duration) *contador {
	return &contador{porIP: make(map[string]*ventana), limite: limite, periodo: periodo}
}

// permitir registra un intento y reporta si la IP sigue dentro del límite.
func (c *contador) permitir(ip string) bool {
	c.mu.Lock()
	v, ok := c.porIP[ip]
	if !ok {
		v = &ventana{}
		c.porIP[ip] = v
	}
	c.mu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	if now.After(v.windowEnd) {
		v.count = 0
		v.windowEnd = now.Add(c.periodo)
	}
	v.count++
	return v.count <= c.limite
}

func (c *contador) purgar(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	purged := 0
	for ip, v := range c.porIP {
		v.mu.Lock()
		if now.After(v.windowEnd) {
			delete(c.porIP, ip)
			purged++
		}
		v.mu.Unlock()
	}
	return purged
}

var loginContador = newContador(loginMaxIntentos, loginVentana)

// LoginRateLimiter frena los intentos de login por sucursal.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loginContador.permitir(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New(fmt.Sprintf("Demasiados intentos de login desde esta sucursal. Intente en %d minutos.", int(loginVentana.Minutes()))))
			return
		}
		c.Next()
	}
}

// RateLimiter limita el tráfico general de la API por sucursal; el límite debe
// cubrir los refrescos del dashboard de todo el personal del local.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	apiContador := newContador(limit, window)
	registrarPurga(apiContador)
	return func(c *gin.Context) {
		if !apiContador.permitir(c.ClientIP()) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes desde esta sucursal. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// ── Purga ─────────────────────────────────────────────────────────────────────
// Las sucursales son pocas pero las IPs móviles del personal de supervisión
// rotan; sin purga los mapas crecen sin tope.

const purgeInterval = 5 * time.Minute

var (
	purgaMu         sync.Mutex
	purgaContadores = []*contador{loginContador}
	purgaOnce       sync.Once
)

func registrarPurga(c *contador) {
	purgaMu.Lock()
	purgaContadores = append(purgaContadores, c)
	purgaMu.Unlock()
	purgaOnce.Do(func() { go purgarExpirados() })
}

func purgarExpirados() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		total := 0
		purgaMu.Lock()
		for _, c := range purgaContadores {
			total += c.purgar(now)
		}
		purgaMu.Unlock()
		if total > 0 {
			log.Debug().Int("entradas_purgadas", total).Msg("rate limiter: ventanas expiradas purgadas")
		}
	}
}
