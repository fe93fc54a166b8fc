package gen

import (
	"github.com/dave/jennifer/jen"

	"holda/internal/config"
)

const (
	yamlPath    = "gopkg.in/yaml.v3"
	msgpackPath = "github.com/vmihailenco/msgpack/v5"
)

// emitEncode generates transparent encoders: the wrapper encodes exactly as
// its inner value.
func emitEncode(u *unit) []jen.Code {
	var out []jen.Code

	if u.hasFormat(config.FormatJSON) {
		out = append(out, u.decl(
			"MarshalJSON encodes the wrapped value.",
			jen.Func().Add(u.valueRecv()).Id("MarshalJSON").Params().
				Params(jen.Index().Byte(), jen.Error()).
				Block(jen.Return(jen.Qual("encoding/json", "Marshal").Call(u.self()))),
		))
	}

	if u.hasFormat(config.FormatYAML) {
		out = append(out, u.decl(
			"MarshalYAML encodes the wrapped value.",
			jen.Func().Add(u.valueRecv()).Id("MarshalYAML").Params().
				Params(jen.Any(), jen.Error()).
				Block(jen.Return(u.self(), jen.Nil())),
		))
	}

	if u.hasFormat(config.FormatMsgpack) {
		out = append(out, u.decl(
			"EncodeMsgpack encodes the wrapped value.",
			jen.Func().Add(u.valueRecv()).Id("EncodeMsgpack").
				Params(jen.Id("enc").Op("*").Qual(msgpackPath, "Encoder")).
				Error().
				Block(jen.Return(jen.Id("enc").Dot("Encode").Call(u.self()))),
		))
	}

	return out
}

// emitDecode generates transparent decoders. Errors come from the inner
// value's decoding and are returned unchanged.
func emitDecode(u *unit) []jen.Code {
	var out []jen.Code

	if u.hasFormat(config.FormatJSON) {
		out = append(out, u.decl(
			"UnmarshalJSON decodes into the wrapped value.",
			jen.Func().Add(u.ptrRecv()).Id("UnmarshalJSON").
				Params(jen.Id("data").Index().Byte()).
				Error().
				Block(jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Add(u.self())))),
		))
	}

	if u.hasFormat(config.FormatYAML) {
		out = append(out, u.decl(
			"UnmarshalYAML decodes into the wrapped value.",
			jen.Func().Add(u.ptrRecv()).Id("UnmarshalYAML").
				Params(jen.Id("node").Op("*").Qual(yamlPath, "Node")).
				Error().
				Block(jen.Return(jen.Id("node").Dot("Decode").Call(jen.Op("&").Add(u.self())))),
		))
	}

	if u.hasFormat(config.FormatMsgpack) {
		out = append(out, u.decl(
			"DecodeMsgpack decodes into the wrapped value.",
			jen.Func().Add(u.ptrRecv()).Id("DecodeMsgpack").
				Params(jen.Id("dec").Op("*").Qual(msgpackPath, "Decoder")).
				Error().
				Block(jen.Return(jen.Id("dec").Dot("Decode").Call(jen.Op("&").Add(u.self())))),
		))
	}

	return out
}
