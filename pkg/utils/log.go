package utils

import (
	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Bootstrap reconfigures it from the loaded config.
var Log = logrus.New()
