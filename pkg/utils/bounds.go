package utils

// Bounds 屏幕（竞技场）尺寸，原点在左上角
type Bounds struct {
	Width  float64
	Height float64
}

// Center 屏幕中心
func (b Bounds) Center() Vec2 {
	return V(b.Width/2, b.Height/2)
}

// Contains 判断点是否在屏幕内（含边界）
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Expand 判断点是否在向外扩展 margin 后的区域内
func (b Bounds) Expand(p Vec2, margin float64) bool {
	return p.X >= -margin && p.X <= b.Width+margin && p.Y >= -margin && p.Y <= b.Height+margin
}
