package model

import "strings"

type Principal struct {
	Username string
}

func (p Principal) Valid() bool {
	return strings.TrimSpace(p.Username) != ""
}
