package edge

import "net/http"

// Geo describes the request origin as reported by the fronting CDN. Fields
// are left empty when the platform provides no geolocation.
type Geo struct {
	Country   string
	Region    string
	City      string
	Latitude  string
	Longitude string
}

// GeoResolver extracts geolocation for an inbound request.
type GeoResolver interface {
	Resolve(r *http.Request) Geo
}

// HeaderGeoResolver reads the geolocation headers set by common CDNs,
// preferring the richer Vercel set over Cloudflare's country-only header.
type HeaderGeoResolver struct{}

func (HeaderGeoResolver) Resolve(r *http.Request) Geo {
	if country := r.Header.Get("X-Vercel-IP-Country"); country != "" {
		return Geo{
			Country:   country,
			Region:    r.Header.Get("X-Vercel-IP-Country-Region"),
			City:      r.Header.Get("X-Vercel-IP-City"),
			Latitude:  r.Header.Get("X-Vercel-IP-Latitude"),
			Longitude: r.Header.Get("X-Vercel-IP-Longitude"),
		}
	}
	return Geo{Country: r.Header.Get("CF-IPCountry")}
}
