package restart

import (
	"io"

	"github.com/sirupsen/logrus"
)

func testLogEntry() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
