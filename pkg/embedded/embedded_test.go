package embedded

import (
	"testing"
	"testing/fstest"
)

// testFS 测试用的内存文件系统
var testFS = fstest.MapFS{
	"data/formation.yaml": &fstest.MapFile{Data: []byte("seed: 7\n")},
}

// TestNotInitialized 未初始化时的行为
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	_, err := ReadFile("data/formation.yaml")
	if err == nil || err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error: %v", err)
	}
	if Exists("data/formation.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"正常路径", "data/formation.yaml", false},
		{"带 ./ 前缀", "./data/formation.yaml", false},
		{"文件不存在", "data/missing.yaml", true},
		{"未知前缀", "assets/formation.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != "seed: 7\n" {
				t.Errorf("ReadFile(%q) = %q", tt.path, data)
			}
		})
	}
}

// TestExists 测试文件存在性检查
func TestExists(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	if !Exists("data/formation.yaml") {
		t.Error("Expected data/formation.yaml to exist")
	}
	if Exists("data/other.yaml") {
		t.Error("Expected data/other.yaml to be missing")
	}
}
