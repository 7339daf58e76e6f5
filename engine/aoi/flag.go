package aoi

import "strings"

// NodeFlag 节点标记
type NodeFlag uint16

const (
	FlagEntity         NodeFlag = 0x1  // entity 节点
	FlagTrigger        NodeFlag = 0x2  // 触发器节点
	FlagHide           NodeFlag = 0x4  // 隐藏节点（其他节点不可见）
	FlagRemoving       NodeFlag = 0x8  // 删除中
	FlagRemoved        NodeFlag = 0x10 // 已删除，等待真正的 unlink
	FlagPending        NodeFlag = 0x20 // 处于 update 中
	FlagEntityUpdating NodeFlag = 0x40 // entity 节点正在更新自己和 watchers
	FlagInstalling     NodeFlag = 0x80 // 触发器边界正在安装

	// 同一个坐标值上，负边界总是排在最前，正边界总是排在最后
	FlagPositiveBoundary NodeFlag = 0x100
	FlagNegativeBoundary NodeFlag = 0x200

	FlagHideOrRemoved = FlagHide | FlagRemoved
	FlagBoundary      = FlagPositiveBoundary | FlagNegativeBoundary
)

var flagNames = []struct {
	flag NodeFlag
	name string
}{
	{FlagEntity, "entity"},
	{FlagTrigger, "trigger"},
	{FlagHide, "hide"},
	{FlagRemoving, "removing"},
	{FlagRemoved, "removed"},
	{FlagPending, "pending"},
	{FlagEntityUpdating, "updating"},
	{FlagInstalling, "installing"},
	{FlagPositiveBoundary, "positive"},
	{FlagNegativeBoundary, "negative"},
}

// Has reports whether any bit of flag is set
func (f NodeFlag) Has(flag NodeFlag) bool {
	return f&flag != 0
}

// HasAll reports whether every bit of flag is set
func (f NodeFlag) HasAll(flag NodeFlag) bool {
	return f&flag == flag
}

func (f NodeFlag) String() string {
	if f == 0 {
		return "none"
	}
	names := make([]string, 0, 4)
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// tie rank on an equal coordinate: negative boundary < plain < positive boundary
func (f NodeFlag) rank() int {
	switch {
	case f&FlagNegativeBoundary != 0:
		return 0
	case f&FlagPositiveBoundary != 0:
		return 2
	}
	return 1
}
