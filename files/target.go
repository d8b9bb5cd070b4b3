package files

// Target says where a session's document lives. The zero value is the
// console target: nothing is read, nothing is written, and the caller
// prints the final text itself.
type Target struct {
	path string
}

func Persisted(path string) Target {
	return Target{path: path}
}

func Console() Target {
	return Target{}
}

func (t Target) IsConsole() bool {
	return t.path == ""
}

func (t Target) Path() string {
	return t.path
}

func (t Target) Load() (string, error) {
	if t.IsConsole() {
		return "", nil
	}
	return Read(t.path)
}

func (t Target) Store(text string) error {
	if t.IsConsole() {
		return nil
	}
	return Write(t.path, text)
}

func (t Target) String() string {
	if t.IsConsole() {
		return "console"
	}
	return t.path
}
