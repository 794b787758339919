package xproc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessID(t *testing.T) {
	assert.Equal(t, os.Getpid(), ProcessID())
}

func TestProcessName(t *testing.T) {
	name := ProcessName()
	// 测试二进制总有可执行文件名
	assert.NotEmpty(t, name)
	assert.NotContains(t, name, string(os.PathSeparator))

	// 缓存语义：重复调用返回同一结果
	assert.Equal(t, name, ProcessName())
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain binary", "/usr/bin/comfyd", "comfyd"},
		{"relative", "./worker", "worker"},
		{"dot", ".", ""},
		{"dotdot", "..", ""},
		{"separator", "/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, baseName(tt.path))
		})
	}
}
