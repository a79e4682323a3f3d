package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 控制全局 logrus 的输出
type Options struct {
	Level  string
	Format string
	File   string
}

// Configure 配置全局 logger，返回的 Closer 用于在退出时关闭滚动日志文件
func Configure(opts Options) io.Closer {
	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	file := strings.TrimSpace(opts.File)
	if file == "" {
		logrus.SetOutput(os.Stdout)
		return io.NopCloser(nil)
	}

	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return rotating
}
