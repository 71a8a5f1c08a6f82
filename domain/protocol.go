package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// バイトオーダー: リトルエンディアン
var byteOrder = binary.LittleEndian

const (
	ProtocolVersion   = 1
	HeaderSize        = 27
	PayloadHeaderSize = 2
)

// Header はメッセージヘッダー (27バイト)
//
//	version    u8       (1)
//	sessionID  [16]byte (16)
//	seq        u16      (2)
//	length     u32      (4)  - ペイロード長 (PayloadHeader + body)
//	timestamp  u32      (4)
type Header struct {
	Version   uint8
	SessionID [16]byte
	Seq       uint16
	Length    uint32
	Timestamp uint32
}

// DataType はメッセージの種別
type DataType uint8

const (
	DataTypeControl DataType = 1
	DataTypeTick    DataType = 2 // host→bot: Snapshot
	DataTypeCommand DataType = 3 // bot→host: 移動指示
	DataTypeLevelup DataType = 4
)

// ControlSubType はcontrolメッセージのサブタイプ
type ControlSubType uint8

const (
	ControlSubTypeJoin   ControlSubType = 1
	ControlSubTypeLeave  ControlSubType = 2
	ControlSubTypePing   ControlSubType = 4
	ControlSubTypePong   ControlSubType = 5
	ControlSubTypeError  ControlSubType = 6
	ControlSubTypeAssign ControlSubType = 7
)

// LevelupSubType はlevelupメッセージのサブタイプ
type LevelupSubType uint8

const (
	LevelupSubTypeRequest LevelupSubType = 1
	LevelupSubTypeChoice  LevelupSubType = 2
)

// PayloadHeader はペイロードヘッダー (2バイト)
//
//	datatype  u8 (1)
//	subtype   u8 (1)
type PayloadHeader struct {
	DataType DataType
	SubType  uint8
}

var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidPayloadSize = errors.New("invalid payload size")
	ErrUnsupportedVersion = errors.New("unsupported protocol version")
	ErrInvalidBody        = errors.New("invalid message body")
)

// ParseHeader はバイト列からHeaderをパースする
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeaderSize
	}

	var sessionID [16]byte
	copy(sessionID[:], data[1:17])

	return &Header{
		Version:   data[0],
		SessionID: sessionID,
		Seq:       byteOrder.Uint16(data[17:19]),
		Length:    byteOrder.Uint32(data[19:23]),
		Timestamp: byteOrder.Uint32(data[23:27]),
	}, nil
}

// Encode はHeaderをバイト列にエンコードする
func (h *Header) Encode() []byte {
	data := make([]byte, HeaderSize)
	data[0] = h.Version
	copy(data[1:17], h.SessionID[:])
	byteOrder.PutUint16(data[17:19], h.Seq)
	byteOrder.PutUint32(data[19:23], h.Length)
	byteOrder.PutUint32(data[23:27], h.Timestamp)
	return data
}

// ParsePayloadHeader はバイト列からPayloadHeaderをパースする
func ParsePayloadHeader(data []byte) (*PayloadHeader, error) {
	if len(data) < PayloadHeaderSize {
		return nil, ErrInvalidPayloadSize
	}

	return &PayloadHeader{
		DataType: DataType(data[0]),
		SubType:  data[1],
	}, nil
}

// Encode はPayloadHeaderをバイト列にエンコードする
func (p *PayloadHeader) Encode() []byte {
	return []byte{byte(p.DataType), p.SubType}
}

// Frame は1メッセージを分解したものです。Body は msgpack エンコードされています。
type Frame struct {
	Header  Header
	Payload PayloadHeader
	Body    []byte
}

// ParseFrame はバイト列を Frame に分解する
func ParseFrame(data []byte) (*Frame, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if header.Version != ProtocolVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}
	if header.Length < PayloadHeaderSize || uint64(len(data)-HeaderSize) < uint64(header.Length) {
		return nil, ErrInvalidPayloadSize
	}
	payload, err := ParsePayloadHeader(data[HeaderSize:])
	if err != nil {
		return nil, err
	}
	return &Frame{
		Header:  *header,
		Payload: *payload,
		Body:    data[HeaderSize+PayloadHeaderSize : HeaderSize+int(header.Length)],
	}, nil
}

// EncodeFrame はヘッダーとボディを連結したメッセージを組み立てる
func EncodeFrame(sessionID SessionID, seq uint16, dataType DataType, subType uint8, body []byte) []byte {
	header := Header{
		Version:   ProtocolVersion,
		SessionID: sessionID.Bytes(),
		Seq:       seq,
		Length:    uint32(PayloadHeaderSize + len(body)),
		Timestamp: uint32(time.Now().UnixMilli() & 0xFFFFFFFF),
	}
	payloadHeader := PayloadHeader{DataType: dataType, SubType: subType}

	data := make([]byte, 0, HeaderSize+PayloadHeaderSize+len(body))
	data = append(data, header.Encode()...)
	data = append(data, payloadHeader.Encode()...)
	data = append(data, body...)
	return data
}

// EncodeControlMessage はボディを持たない制御メッセージをエンコードする
func EncodeControlMessage(sessionID SessionID, seq uint16, subType ControlSubType) []byte {
	return EncodeFrame(sessionID, seq, DataTypeControl, uint8(subType), nil)
}

// EncodeMessage は v を msgpack でエンコードしてメッセージを組み立てる
func EncodeMessage(sessionID SessionID, seq uint16, dataType DataType, subType uint8, v any) ([]byte, error) {
	body, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return EncodeFrame(sessionID, seq, dataType, subType, body), nil
}

// DecodeBody は Frame のボディを v にデコードする
func (f *Frame) DecodeBody(v any) error {
	if err := msgpack.Unmarshal(f.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// JoinBody はチーム参加メッセージのボディ
type JoinBody struct {
	Team   string   `msgpack:"team"`
	Heroes []string `msgpack:"heroes"`
}

// ErrorBody はホストからのエラー通知
type ErrorBody struct {
	Message string `msgpack:"message"`
}

// CommandBody はヒーロー名ごとの移動指示
type CommandBody map[string]Movement

// LevelupRequest はレベルアップイベント
type LevelupRequest struct {
	T       float64               `msgpack:"t"`
	Info    LevelupInfo           `msgpack:"info"`
	Players map[string]PlayerInfo `msgpack:"players"`
}
