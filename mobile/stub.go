//go:build !mobile

// 非移动端构建时只保留 Dummy，绑定入口在 mobile.go 和 embed.go 中（-tags mobile）。
package mobile

// Dummy 让 ./... 在桌面端也能编译本包
func Dummy() {}
