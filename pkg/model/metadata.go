package model

// CategoryMap implements an ordered bidirectional mapping between a category value and its code
type CategoryMap struct {
	values      []string
	ValueToCode map[string]int
	CodeToValue map[int]string
}

func NewCategoryMap() CategoryMap {
	return CategoryMap{
		ValueToCode: map[string]int{},
		CodeToValue: map[int]string{},
	}
}

// Set maps value to code. Re-setting a value keeps its original position.
func (m *CategoryMap) Set(value string, code int) {
	if old, ok := m.ValueToCode[value]; ok {
		delete(m.CodeToValue, old)
	} else {
		m.values = append(m.values, value)
	}
	m.ValueToCode[value] = code
	m.CodeToValue[code] = value
}

func (m CategoryMap) Size() int {
	return len(m.values)
}

func (m CategoryMap) Code(value string) (int, bool) {
	code, ok := m.ValueToCode[value]
	return code, ok
}

// Values returns the categories in insertion order.
func (m CategoryMap) Values() []string {
	result := make([]string, len(m.values))
	copy(result, m.values)
	return result
}

// ValueFor returns the code of value, assigning the next dense code when value is new.
func (m *CategoryMap) ValueFor(value string) int {
	code, ok := m.ValueToCode[value]
	if !ok {
		code = m.Size()
		m.Set(value, code)
	}
	return code
}

// OrdinalMapping is the dense integer coding of the categories of one column
type OrdinalMapping struct {
	Column     string
	Categories CategoryMap
}
