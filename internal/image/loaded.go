package image

import "context"

// Loaded reports whether the browser appears to have retrieved the image's
// bytes. A browser that failed to fetch them leaves fileCreatedDate empty and
// fileSize at -1 even though the element exists.
//
// This is a heuristic: a full disk cache can make the browser report wrong
// values, so false means "probably not loaded".
func (img *Image) Loaded(ctx context.Context) (bool, error) {
	if err := img.handle.AssertExists(ctx); err != nil {
		return false, err
	}
	date, err := img.FileCreatedDate(ctx)
	if err != nil {
		return false, err
	}
	size, err := img.FileSize(ctx)
	if err != nil {
		return false, err
	}
	return IsLoaded(date, size), nil
}

// IsLoaded applies the load heuristic to raw property values.
func IsLoaded(fileCreatedDate string, fileSize int) bool {
	return fileCreatedDate != "" && fileSize != -1
}
