package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/lightning.yaml":      {Data: []byte("pool:\n  capacity: 8\n")},
		"data/textures/middle.png": {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时的各个调用
func TestNotInitialized(t *testing.T) {
	reset()

	if _, err := Open("data/lightning.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open: expected ErrNotInitialized, got %v", err)
	}
	if _, err := ReadFile("data/lightning.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile: expected ErrNotInitialized, got %v", err)
	}
	// Exists 在未初始化时应返回 false（因为内部调用 Open 会出错）
	if Exists("data/lightning.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试路径标准化和前缀检查
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer reset()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain path", "data/lightning.yaml", "pool:\n  capacity: 8\n", false},
		{"dot slash prefix", "./data/lightning.yaml", "pool:\n  capacity: 8\n", false},
		{"missing file", "data/missing.yaml", "", true},
		{"unknown prefix", "assets/lightning.yaml", "", true},
		{"no prefix", "lightning.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestExists 测试文件存在性检查
func TestExists(t *testing.T) {
	Init(testFS())
	defer reset()

	if !Exists("data/textures/middle.png") {
		t.Error("expected data/textures/middle.png to exist")
	}
	if Exists("data/textures/cap.png") {
		t.Error("expected data/textures/cap.png to be missing")
	}
	if Exists("textures/middle.png") {
		t.Error("paths without data/ prefix should not resolve")
	}
}
