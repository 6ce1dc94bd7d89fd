package action

import (
	"fmt"
	"strings"
)

// Common parameter names.
const (
	ParamAction          = "Action"
	ParamResponseFormat  = "ResponseFormat"
	ParamEncryptResponse = "EncryptResponse"
	ParamData            = "Data"
)

// Actions every ACI server answers.
const (
	ActionGetStatus      = "GetStatus"
	ActionGetVersion     = "GetVersion"
	ActionGetLicenseInfo = "GetLicenseInfo"
)

// Parameter is a single name=value pair.
type Parameter struct {
	Name  string
	Value string
}

func (p Parameter) String() string { return p.Name + "=" + p.Value }

// Parameters is an ordered set of action parameters. The zero value is an
// empty set ready to use. Parameters is not safe for concurrent mutation.
type Parameters struct {
	params []Parameter
	index  map[string]int
}

// New returns a set holding Action=name.
func New(name string) *Parameters {
	return NewParameters(Parameter{Name: ParamAction, Value: name})
}

// NewParameters returns a set holding params, in order. Later duplicates
// replace earlier values.
func NewParameters(params ...Parameter) *Parameters {
	p := &Parameters{}
	for _, param := range params {
		p.Put(param.Name, param.Value)
	}
	return p
}

// Put sets name to the string form of value. An existing parameter with the
// same name keeps its position.
func (p *Parameters) Put(name string, value interface{}) *Parameters {
	if p.index == nil {
		p.index = map[string]int{}
	}
	v := fmt.Sprint(value)
	key := strings.ToLower(name)
	if i, ok := p.index[key]; ok {
		p.params[i].Value = v
		return p
	}
	p.index[key] = len(p.params)
	p.params = append(p.params, Parameter{Name: name, Value: v})
	return p
}

// Get returns the value of name.
func (p *Parameters) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	i, ok := p.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return p.params[i].Value, true
}

// Remove deletes name, reporting whether it was present.
func (p *Parameters) Remove(name string) bool {
	if p == nil {
		return false
	}
	key := strings.ToLower(name)
	i, ok := p.index[key]
	if !ok {
		return false
	}
	p.params = append(p.params[:i], p.params[i+1:]...)
	delete(p.index, key)
	for k, j := range p.index {
		if j > i {
			p.index[k] = j - 1
		}
	}
	return true
}

// Action returns the value of the Action parameter, or "".
func (p *Parameters) Action() string {
	v, _ := p.Get(ParamAction)
	return v
}

// Len returns the number of parameters.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.params)
}

// All returns a copy of the parameters in insertion order.
func (p *Parameters) All() []Parameter {
	if p == nil {
		return nil
	}
	return append([]Parameter(nil), p.params...)
}

// Clone returns an independent copy of p.
func (p *Parameters) Clone() *Parameters {
	if p == nil {
		return nil
	}
	return NewParameters(p.params...)
}

func (p *Parameters) String() string {
	s := make([]string, 0, p.Len())
	for _, param := range p.All() {
		s = append(s, param.String())
	}
	return strings.Join(s, "&")
}
