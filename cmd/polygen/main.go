// Command polygen builds polyhedron description files offline: it lists and
// writes catalog polytopes, evaluates scripts, exports STL or OBJ and
// reports what the mesh builder makes of a description.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/chazu/polyview/pkg/config"
)

func main() {
	conf, err := config.FromEnv()
	if err != nil {
		logrus.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	if err := newRootCmd(conf, os.Stdout).Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
