// Package event 同步事件分发
//
// 计分、波次等核心逻辑只负责发出事件；音效、界面、统计等协作方订阅感兴趣的事件。
// 分发是同步的：Dispatch 返回时所有订阅者都已处理完毕。
package event

// EventType 事件类型
type EventType string

// Event 事件
type Event struct {
	Type EventType
	Data interface{} // 事件数据，具体类型见 types.go 中各事件的说明
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 允许普通函数作为订阅者
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
//
// 非并发安全：订阅和分发都在游戏循环所在的 goroutine 中进行。
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe 取消订阅
// ListenerFunc 不可比较，只能通过 Clear 移除
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners, exists := d.listeners[eventType]
	if !exists {
		return
	}
	for i, l := range listeners {
		if _, isFunc := l.(ListenerFunc); isFunc {
			continue
		}
		if l == listener {
			d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// Clear 移除某类事件的全部订阅者
func (d *Dispatcher) Clear(eventType EventType) {
	delete(d.listeners, eventType)
}

// Dispatch 将事件发送给所有订阅者（按订阅顺序）
// d 为 nil 时什么也不做，便于在测试中省略分发器
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}

// ListenerCount 某类事件的订阅者数量
func (d *Dispatcher) ListenerCount(eventType EventType) int {
	return len(d.listeners[eventType])
}
