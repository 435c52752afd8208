package blog

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/betterengineer/blog/seo"
	"github.com/betterengineer/blog/views"
)

func (a *App) adminPage(c echo.Context, title string) views.Page {
	return a.page(c, a.meta(title, "", "/admin", seo.WithRobots(seo.NoIndex())))
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return a.render(c, http.StatusOK, "admin_login", a.Views.AdminLogin(a.adminPage(c, "Sign in"), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		a.loginLimiter.Reset(ip)
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	a.loginLimiter.Record(ip)
	a.metrics.loginFailures.Inc()
	a.Log.Warn("admin login rejected", zap.String("ip", ip))
	return a.render(c, http.StatusUnauthorized, "admin_login", a.Views.AdminLogin(a.adminPage(c, "Sign in"), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// handleAdminReload re-reads the content directory without a restart.
func (a *App) handleAdminReload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	if err := a.Reload(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) renderAdminDashboard(c echo.Context) error {
	drafts, err := a.Store.ListDrafts()
	if err != nil {
		return err
	}
	return a.render(c, http.StatusOK, "admin_dashboard", a.Views.AdminDashboard(a.adminPage(c, "Drafts"), drafts, CsrfToken(c)))
}
