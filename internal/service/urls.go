package service

// SiteURLs derives the public locations a project's versions are served
// under. Pure string assembly; the serving layer owns the actual routes.
type SiteURLs struct {
	PreviewPrefix string
	AppPrefix     string
}

// DefaultSiteURLs matches the serving layer's default mounts.
func DefaultSiteURLs() SiteURLs {
	return SiteURLs{PreviewPrefix: "/preview", AppPrefix: "/app"}
}

// Preview returns the draft preview path for a slug.
func (u SiteURLs) Preview(slug string) string {
	return u.PreviewPrefix + "/" + slug
}

// Live returns the published site path for a slug.
func (u SiteURLs) Live(slug string) string {
	return u.AppPrefix + "/" + slug
}
