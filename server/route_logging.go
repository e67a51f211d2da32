package server

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	cyan    = "\033[36m"
	gray    = "\033[90m"
	reset   = "\033[0m"
)

var methodColors = map[string]string{
	"GET":    green,
	"POST":   blue,
	"PUT":    cyan,
	"DELETE": yellow,
	"PATCH":  magenta,
}

// logRoutes prints the route table at startup in development.
func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		logRoute(method, path)
	}
}

func logRoute(method, path string) {
	color, ok := methodColors[method]
	if !ok {
		color = gray
	}
	log.Info().Msgf("[%s%s%s] %s", color, fmt.Sprintf(" %-7s", method), reset, path)
}
