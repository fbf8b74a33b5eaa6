package handler

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"TravelPlanner_WebProject/internal/session"

	"github.com/gin-gonic/gin"
)

// About godoc
// @Summary      About page
// @Tags         Pages
// @Produce      html
// @Success      200 {string} string "about page"
// @Router       /about [get]
func (h *Handler) About(c *gin.Context, sess *session.Session) {
	h.render(c, sess, http.StatusOK, "about.html", "About", nil)
}

// Contact godoc
// @Summary      Contact page
// @Description  Pre-fills the logged-in user's name and email.
// @Tags         Pages
// @Produce      html
// @Success      200 {string} string "contact page"
// @Router       /contact [get]
func (h *Handler) Contact(c *gin.Context, sess *session.Session) {
	name, email := sess.UserName, sess.UserEmail
	if name == "" {
		name = "Enter your name"
	}
	if email == "" {
		email = "Enter your email"
	}
	h.render(c, sess, http.StatusOK, "contact.html", "Contact", gin.H{
		"UserName":  name,
		"UserEmail": email,
		"Message":   "",
	})
}

// NotFound renders the 404 page for unknown routes.
func (h *Handler) NotFound(c *gin.Context, sess *session.Session) {
	h.render(c, sess, http.StatusNotFound, "404.html", "Not found", nil)
}

// MethodNotAllowed sends the user home with a notice.
func (h *Handler) MethodNotAllowed(c *gin.Context, sess *session.Session) {
	h.redirect(c, sess, "/", session.FlashDanger, "Invalid request method.")
}

// Robots godoc
// @Summary      robots.txt
// @Tags         Pages
// @Produce      plain
// @Success      200 {string} string "robots rules"
// @Router       /robots.txt [get]
func (h *Handler) Robots(c *gin.Context, _ *session.Session) {
	c.String(http.StatusOK, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", baseURL(c.Request))
}

var sitemapPaths = []string{"/", "/about", "/contact", "/login", "/logout", "/register"}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// Sitemap godoc
// @Summary      sitemap.xml
// @Tags         Pages
// @Produce      xml
// @Success      200 {string} string "urlset"
// @Router       /sitemap.xml [get]
func (h *Handler) Sitemap(c *gin.Context, _ *session.Session) {
	base := baseURL(c.Request)
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range sitemapPaths {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + p})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.logger.Error("Failed to encode sitemap", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

// Healthz godoc
// @Summary      Health check
// @Description  Pings the database.
// @Tags         Ops
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) Healthz(c *gin.Context, _ *session.Session) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// baseURL is the absolute origin the request was made to.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
