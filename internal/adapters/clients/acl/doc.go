// Package acl translates remote locale packs into domain types.
//
// A content server publishes one pack per locale at /locales/<code>.json:
//
//	{
//	  "locale": "fr",
//	  "version": "2024-11-02",
//	  "points": [
//	    {"number": 1, "heading": "...", "body": "...", "commentary": "...", "topic": "..."}
//	  ]
//	}
//
// The pack's field names never leave this package. HTTP statuses and
// transport failures are mapped onto domain errors:
//
//   - 404 → [domain.ErrNotFound]
//   - 400/422 → [domain.ErrValidation]
//   - 401/403 → [domain.ErrForbidden]
//   - 409 → [domain.ErrConflict]
//   - 429, 5xx, open circuit, exhausted retries → [domain.ErrUnavailable]
package acl
