// Package errors provides the structured error type shared by the recipe
// store, the query engine, the selector and the HTTP layer.
//
// Every error that crosses a package boundary carries an ErrorCode. The
// server package maps codes onto HTTP status codes and retryability:
//
//	ErrCodeInvalidRequest   400  invalid filter field, empty search keyword, bad payload
//	ErrCodeNotFound         404  unknown recipe, media or setting
//	ErrCodePayloadTooLarge  413  upload above the configured size
//	ErrCodeRateLimitExceeded 429
//	ErrCodeInternal         500  failed store reads and writes
//	ErrCodeUnavailable      503
//	ErrCodeTimeout          504
//
// Usage:
//
//	if err := db.WithContext(ctx).Create(r).Error; err != nil {
//	    return errors.Wrap(errors.ErrCodeInternal, "failed to save recipe", err)
//	}
package errors
