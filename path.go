package tokenauth

import "strings"

type notFound struct{}
type signOut struct{}
type strategies struct{}
type csrf struct{}
type unmatched struct{}
type strategy struct {
	strategyId string
}

func parsePath(path, basePath string) any {
	if !strings.HasPrefix(path, basePath) {
		return unmatched{}
	}

	ownedPath := strings.TrimPrefix(strings.TrimPrefix(path, basePath), "/")
	parts := strings.Split(ownedPath, "/")

	if len(parts) == 1 {
		switch parts[0] {
		case "strategies":
			return strategies{}
		case "sign-out":
			return signOut{}
		case "csrf":
			return csrf{}
		default:
			return strategy{parts[0]}
		}
	}

	return notFound{}
}
