package libgl

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

// PushDebugGroup opens a named group in the debug output. Must be paired with PopDebugGroup.
func PushDebugGroup(name string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
}

func PopDebugGroup() {
	gl.PopDebugGroup()
}

// Driver messages that only report buffer placement.
var mutedMessages = map[uint32][]uint32{
	gl.DEBUG_TYPE_OTHER:              {131185},
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR: {131222},
	gl.DEBUG_TYPE_PERFORMANCE:        {131218},
}

// EnableDebugOutput routes driver messages to the log.
// High severity messages panic with the active debug group stack.
func EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			if gltype == gl.DEBUG_TYPE_PUSH_GROUP {
				groupStack = append(groupStack, message)
				return
			} else if gltype == gl.DEBUG_TYPE_POP_GROUP {
				groupStack = groupStack[:len(groupStack)-1]
				return
			}
			msg := fmt.Sprintf("[%v] %v #%v from %v: %v", severityName(severity), typeName(gltype), id, sourceName(source), message)
			if severity == gl.DEBUG_SEVERITY_HIGH {
				log.Panicf("%v\ndebug stack: %v", msg, strings.Join(groupStack, " > "))
			}
			log.Println(msg)
		}, nil)
	for gltype, ids := range mutedMessages {
		gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gltype, gl.DONT_CARE, int32(len(ids)), &ids[0], false)
	}
}

func severityName(severity uint32) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "CRITICAL_ERROR"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "ERROR"
	case gl.DEBUG_SEVERITY_LOW:
		return "WARNING"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "INFO"
	}
	return "UNKNOWN"
}

func typeName(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "ERROR"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "DEPRECATED_BEHAVIOR"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "UNDEFINED_BEHAVIOR"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "PERFORMANCE"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "PORTABILITY"
	case gl.DEBUG_TYPE_MARKER:
		return "MARKER"
	}
	return "OTHER"
}

func sourceName(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "GRAPHICS_LIBRARY"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "SHADER_COMPILER"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "WINDOW_SYSTEM"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "THIRD_PARTY"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "APPLICATION"
	}
	return "OTHER"
}
