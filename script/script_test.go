package script

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rv32sim/emulator"
)

var _ = Describe("Module", func() {
	var (
		emu *emulator.Emulator
		env starlark.StringDict
	)

	BeforeEach(func() {
		emu = emulator.NewEmulator()
		emu.SetSink(func(line string) {})
		env = starlark.StringDict{"rv32": Module(emu)}
	})

	exec := func(src string) (starlark.StringDict, error) {
		thread := &starlark.Thread{Name: "script_test"}
		opts := &syntax.FileOptions{}
		return starlark.ExecFileOptions(opts, thread, "test.star", src, env)
	}

	It("should load and step a program", func() {
		globals, err := exec(`
rv32.load_program("addi x5, x0, 10\naddi x6, x0, 32\nadd x7, x5, x6\necall")
a = rv32.step()
b = rv32.step()
c = rv32.step()
d = rv32.step()
x7 = rv32.reg(7)
`)
		Expect(err).NotTo(HaveOccurred())
		Expect(globals["a"]).To(Equal(starlark.Bool(true)))
		Expect(globals["c"]).To(Equal(starlark.Bool(true)))
		Expect(globals["d"]).To(Equal(starlark.Bool(false)))
		Expect(globals["x7"]).To(Equal(starlark.MakeInt(42)))
	})

	It("should run to the halt", func() {
		globals, err := exec(`
rv32.load_program("addi x5, x0, 1\naddi x6, x0, 2\necall")
steps = rv32.run(100)
pc = rv32.pc()
`)
		Expect(err).NotTo(HaveOccurred())
		Expect(globals["steps"]).To(Equal(starlark.MakeInt(2)))
		Expect(globals["pc"]).To(Equal(starlark.MakeInt(8)))
	})

	It("should expose memory words little-endian", func() {
		globals, err := exec(`
rv32.load_program("li x5, 0x12345678\nsw x5, 8(x0)")
rv32.run(100)
size = rv32.memory_size()
word = rv32.memory_word(8)
`)
		Expect(err).NotTo(HaveOccurred())
		Expect(globals["size"]).To(Equal(starlark.MakeInt(emulator.MEM_SIZE)))
		Expect(globals["word"]).To(Equal(starlark.MakeInt(0x12345678)))
	})

	It("should map PC values to source lines", func() {
		globals, err := exec(`
rv32.load_program("# header\naddi x5, x0, 1\necall")
first = rv32.source_line(0)
second = rv32.source_line(4)
beyond = rv32.source_line(8)
`)
		Expect(err).NotTo(HaveOccurred())
		Expect(globals["first"]).To(Equal(starlark.MakeInt(1)))
		Expect(globals["second"]).To(Equal(starlark.MakeInt(2)))
		Expect(globals["beyond"]).To(Equal(starlark.MakeInt(-1)))
	})

	It("should render a state dump", func() {
		globals, err := exec(`
rv32.load_program("addi x5, x0, 7")
rv32.run(100)
dump = rv32.dump_state()
ok = "x05=          7" in dump
`)
		Expect(err).NotTo(HaveOccurred())
		Expect(globals["ok"]).To(Equal(starlark.Bool(true)))
	})

	It("should reject out-of-range register indexes", func() {
		_, err := exec(`x = rv32.reg(99)`)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("out of range"))
	})

	It("should reject out-of-range memory addresses", func() {
		_, err := exec(`x = rv32.memory_word(8192)`)
		Expect(err).To(HaveOccurred())
	})
})
