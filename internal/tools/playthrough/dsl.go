// Package playthrough loads Lua playthrough scripts and drives them against an
// in-process play session on a manual clock.
package playthrough

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const playthroughTypeName = "playthrough"

// Playthrough is a named list of steps loaded from a script.
type Playthrough struct {
	Name  string
	Steps []Step
}

// Step is one scripted call.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadPlaythroughFromFile runs the Lua script at path and returns the
// Playthrough it builds.
func LoadPlaythroughFromFile(path string) (*Playthrough, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	p, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// LoadPlaythrough runs script source and returns the Playthrough it builds.
func LoadPlaythrough(name, source string) (*Playthrough, error) {
	state := newState()
	if err := lua.LoadString(state, source); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	p, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = name
	}
	return p, nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerPlaythroughType(state)
	registerPlaythroughConstructor(state)
	return state
}

func runScript(state *lua.State) (*Playthrough, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("playthrough script must return Playthrough")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	p, ok := ud.(*Playthrough)
	if !ok || p == nil {
		return nil, fmt.Errorf("playthrough script returned invalid Playthrough")
	}
	return p, nil
}

func registerPlaythroughType(state *lua.State) {
	lua.NewMetaTable(state, playthroughTypeName)
	state.NewTable()
	lua.SetFunctions(state, playthroughMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerPlaythroughConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, playthroughConstructor, 0)
	state.SetGlobal("Playthrough")
}

var playthroughConstructor = []lua.RegistryFunction{
	{Name: "new", Function: playthroughNew},
}

func playthroughNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Playthrough{Name: name})
	lua.SetMetaTableNamed(state, playthroughTypeName)
	return 1
}

// Every method returns the playthrough so calls can be chained.
var playthroughMethods = []lua.RegistryFunction{
	{Name: "start", Function: intStep("start", "level")},
	{Name: "select", Function: intStep("select", "index")},
	{Name: "clue", Function: playthroughClue},
	{Name: "clues", Function: intStep("clues", "count")},
	{Name: "wait", Function: playthroughWait},
	{Name: "decide", Function: playthroughDecide},
	{Name: "exit", Function: bareStep("exit")},
	{Name: "hard_mode", Function: playthroughHardMode},
	{Name: "acknowledge", Function: bareStep("acknowledge")},
	{Name: "expect", Function: tableStep("expect")},
	{Name: "expect_progress", Function: tableStep("expect_progress")},
	{Name: "expect_phase", Function: playthroughExpectPhase},
}

func intStep(kind, key string) lua.Function {
	return func(state *lua.State) int {
		p := checkPlaythrough(state)
		value := lua.CheckInteger(state, 2)
		appendStep(p, kind, map[string]any{key: value})
		state.PushValue(1)
		return 1
	}
}

func bareStep(kind string) lua.Function {
	return func(state *lua.State) int {
		p := checkPlaythrough(state)
		appendStep(p, kind, nil)
		state.PushValue(1)
		return 1
	}
}

func tableStep(kind string) lua.Function {
	return func(state *lua.State) int {
		p := checkPlaythrough(state)
		lua.CheckType(state, 2, lua.TypeTable)
		appendStep(p, kind, tableToMap(state, 2))
		state.PushValue(1)
		return 1
	}
}

func playthroughClue(state *lua.State) int {
	p := checkPlaythrough(state)
	text := lua.CheckString(state, 2)
	appendStep(p, "clue", map[string]any{"text": text})
	state.PushValue(1)
	return 1
}

func playthroughWait(state *lua.State) int {
	p := checkPlaythrough(state)
	seconds := lua.CheckNumber(state, 2)
	lua.ArgumentCheck(state, seconds >= 0, 2, "wait must not be negative")
	appendStep(p, "wait", map[string]any{"seconds": normalizeNumber(seconds)})
	state.PushValue(1)
	return 1
}

func playthroughDecide(state *lua.State) int {
	p := checkPlaythrough(state)
	action := lua.CheckString(state, 2)
	appendStep(p, "decide", map[string]any{"action": action})
	state.PushValue(1)
	return 1
}

func playthroughHardMode(state *lua.State) int {
	p := checkPlaythrough(state)
	lua.CheckType(state, 2, lua.TypeBoolean)
	appendStep(p, "hard_mode", map[string]any{"enabled": state.ToBoolean(2)})
	state.PushValue(1)
	return 1
}

func playthroughExpectPhase(state *lua.State) int {
	p := checkPlaythrough(state)
	phase := lua.CheckString(state, 2)
	appendStep(p, "expect_phase", map[string]any{"phase": phase})
	state.PushValue(1)
	return 1
}

func checkPlaythrough(state *lua.State) *Playthrough {
	ud := lua.CheckUserData(state, 1, playthroughTypeName)
	if p, ok := ud.(*Playthrough); ok && p != nil {
		return p
	}
	lua.ArgumentError(state, 1, "playthrough expected")
	return nil
}

func appendStep(p *Playthrough, kind string, data map[string]any) {
	if p == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	p.Steps = append(p.Steps, Step{Kind: kind, Args: data})
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo turns sequences into []any and integer-keyed tables into
// map[int]any, so stars = {3, 2} and stars = {[2] = 3} both decode.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	intKeys := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		idx, ok := state.ToInteger(-2)
		if state.TypeOf(-2) != lua.TypeNumber || !ok || idx <= 0 {
			isArray = false
			intKeys = false
		} else {
			count++
			maxIndex = max(maxIndex, idx)
		}
		state.Pop(1)
	}

	if count > 0 && isArray && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	if count > 0 && intKeys {
		result := make(map[int]any, count)
		state.PushNil()
		for state.Next(index) {
			idx, _ := state.ToInteger(-2)
			result[idx] = luaToGo(state, -1)
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
