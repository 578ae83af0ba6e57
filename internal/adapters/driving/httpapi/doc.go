// Package httpapi exposes the video picker over HTTP.
//
// Routes:
//
//	GET /healthz                         service and gateway status
//	GET /youtube/oauth/callback          shows the authorization code for the setup wizard
//	GET /api/youtube/search?q=&max=      ordered {"<id>": "<title>"} object or {"error": "..."}
//	GET /api/youtube/videos/{id}         video detail, 404 with null when unknown
//	GET /api/youtube/videos/{id}/label   {"label": "..."}
package httpapi
