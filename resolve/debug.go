package resolve

import (
	"github.com/gogpu/spvfront/spirv"
)

// debugGroup handles source, naming and line-information instructions.
type debugGroup struct{}

func (debugGroup) Name() string { return "debug" }

func (debugGroup) Handlers() map[spirv.OpCode]Handler {
	return map[spirv.OpCode]Handler{
		spirv.OpSource:          handleSource,
		spirv.OpSourceContinued: handleSourceContinued,
		spirv.OpSourceExtension: handleSourceExtension,
		spirv.OpName:            handleName,
		spirv.OpMemberName:      handleMemberName,
		spirv.OpString:          handleString,
		spirv.OpLine:            handleLine,
		spirv.OpNoLine:          handleNoLine,
		spirv.OpModuleProcessed: handleModuleProcessed,
	}
}

func handleSource(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	s.source.Language = spirv.SourceLanguage(ops.Word())
	s.source.Version = ops.Word()
	if ops.More() {
		s.source.File = ops.ID()
	}
	if ops.More() {
		s.sourceText.WriteString(ops.LiteralString())
	}
	if err := ops.Err(); err != nil {
		return err
	}
	if s.source.File != 0 {
		return s.ids.check(s.source.File)
	}
	return nil
}

func handleSourceContinued(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	text := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	s.sourceText.WriteString(text)
	return nil
}

func handleSourceExtension(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	name := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	s.source.Extensions = append(s.source.Extensions, name)
	return nil
}

func handleModuleProcessed(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	process := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	s.source.Processes = append(s.source.Processes, process)
	return nil
}

func handleName(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	target := ops.ID()
	name := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.ids.check(target); err != nil {
		return err
	}
	s.names[target] = name
	return nil
}

func handleMemberName(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	target := ops.ID()
	member := ops.Word()
	name := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	if err := s.ids.check(target); err != nil {
		return err
	}
	s.members[memberKey{target, member}] = name
	return nil
}

func handleString(s *Stage, inst spirv.Instruction, index spirv.InstructionIndex) error {
	ops := inst.Operands()
	result := ops.ID()
	text := ops.LiteralString()
	if err := ops.Err(); err != nil {
		return err
	}
	return s.SetID(result, &String{Defined: Defined{index}, Value: text})
}

func handleLine(s *Stage, inst spirv.Instruction, _ spirv.InstructionIndex) error {
	ops := inst.Operands()
	file := ops.ID()
	line := ops.Word()
	column := ops.Word()
	if err := ops.Err(); err != nil {
		return err
	}
	if _, err := Get[*String](s.ids, file); err != nil {
		return err
	}
	s.loc.setLine(file, line, column)
	return nil
}

func handleNoLine(s *Stage, _ spirv.Instruction, _ spirv.InstructionIndex) error {
	s.loc.noLine()
	return nil
}
