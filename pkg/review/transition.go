package review

// Event — событие, меняющее Session.
type Event interface {
	isEvent()
}

// Edited — пользователь изменил черновик.
type Edited struct{ Text string }

// Rejected — отправка отклонена локальной валидацией.
type Rejected struct{ Err error }

// Submitted — запрос ушёл к провайдеру.
type Submitted struct{ Request Request }

// Succeeded — провайдер вернул разбор.
type Succeeded struct {
	Request Request
	Review  string
}

// Failed — провайдер вернул ошибку.
type Failed struct {
	Request Request
	Err     error
}

// Cleared — сброс черновика и результата.
type Cleared struct{}

// ExampleLoaded — черновик заменён примером.
type ExampleLoaded struct{}

func (Edited) isEvent()        {}
func (Rejected) isEvent()      {}
func (Submitted) isEvent()     {}
func (Succeeded) isEvent()     {}
func (Failed) isEvent()        {}
func (Cleared) isEvent()       {}
func (ExampleLoaded) isEvent() {}

// Apply — чистая функция перехода. Не выполняет I/O и не меняет s.
//
// Результат для запроса, который уже не ожидается, игнорируется.
// Cleared во время Loading не снимает запрос: Loading длится до его
// результата, который затем отбрасывается в Idle.
func Apply(s Session, ev Event) Session {
	switch e := ev.(type) {
	case Edited:
		s.Draft = e.Text

	case ExampleLoaded:
		s.Draft = ExampleText

	case Rejected:
		s.State = Failure(UserMessage(e.Err))

	case Submitted:
		req := e.Request
		s.State = Loading()
		s.Pending = &req

	case Succeeded:
		if !s.isPending(e.Request) {
			return s
		}
		at := e.Request.At
		s.LastSubmitted = &at
		s.State = Success(e.Review)
		if s.DropPending {
			s.State = Idle()
		}
		s.Pending = nil
		s.DropPending = false

	case Failed:
		if !s.isPending(e.Request) {
			return s
		}
		s.State = Failure(MsgRemoteFailure)
		if s.DropPending {
			s.State = Idle()
		}
		s.Pending = nil
		s.DropPending = false

	case Cleared:
		s.Draft = ""
		if s.State.Kind == KindLoading {
			s.DropPending = true
			return s
		}
		s.State = Idle()
		s.Pending = nil
	}
	return s
}

func (s Session) isPending(req Request) bool {
	return s.State.Kind == KindLoading && s.Pending != nil && s.Pending.ID == req.ID
}
