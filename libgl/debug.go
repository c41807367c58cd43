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

var debugSeverityNames = map[uint32]string{
	gl.DEBUG_SEVERITY_HIGH:         "CRITICAL_ERROR",
	gl.DEBUG_SEVERITY_MEDIUM:       "ERROR",
	gl.DEBUG_SEVERITY_LOW:          "WARNING",
	gl.DEBUG_SEVERITY_NOTIFICATION: "INFO",
}

var debugTypeNames = map[uint32]string{
	gl.DEBUG_TYPE_ERROR:               "ERROR",
	gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "DEPRECATED_BEHAVIOR",
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "UNDEFINED_BEHAVIOR",
	gl.DEBUG_TYPE_PERFORMANCE:         "PERFORMANCE",
	gl.DEBUG_TYPE_PORTABILITY:         "PORTABILITY",
	gl.DEBUG_TYPE_OTHER:               "OTHER",
	gl.DEBUG_TYPE_MARKER:              "MARKER",
}

var debugSourceNames = map[uint32]string{
	gl.DEBUG_SOURCE_API:             "GRAPHICS_LIBRARY",
	gl.DEBUG_SOURCE_SHADER_COMPILER: "SHADER_COMPILER",
	gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "WINDOW_SYSTEM",
	gl.DEBUG_SOURCE_THIRD_PARTY:     "THIRD_PARTY",
	gl.DEBUG_SOURCE_APPLICATION:     "APPLICATION",
	gl.DEBUG_SOURCE_OTHER:           "OTHER",
}

// EnableDebugOutput installs a synchronous debug callback that logs driver messages.
// High severity messages panic with the current debug group stack.
// Notifications are only logged when verbose is set.
func EnableDebugOutput(verbose bool) {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			if gltype == gl.DEBUG_TYPE_PUSH_GROUP {
				groupStack = append(groupStack, message)
				return
			} else if gltype == gl.DEBUG_TYPE_POP_GROUP {
				if len(groupStack) > 1 {
					groupStack = groupStack[:len(groupStack)-1]
				}
				return
			}
			if severity == gl.DEBUG_SEVERITY_NOTIFICATION && !verbose {
				return
			}
			msg := fmt.Sprintf("[%v] %v #%v from %v: %v", debugSeverityNames[severity], debugTypeNames[gltype], id, debugSourceNames[source], message)
			if severity == gl.DEBUG_SEVERITY_HIGH {
				log.Panicf("%v\ndebug stack: %v", msg, strings.Join(groupStack, " > "))
			}
			log.Println(msg)
		}, nil)

	// buffer detailed info, usage hints
	disabledMessages := []uint32{131185}
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, gl.DONT_CARE, int32(len(disabledMessages)), &disabledMessages[0], false)
}

func PushDebugGroup(name string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
}

func PopDebugGroup() {
	gl.PopDebugGroup()
}
