package payload

import (
	"time"

	chimepb "github.com/chimelabs/chime/proto/gen"
)

// FiredToProto converts a fired-occurrence payload to its wire message.
func FiredToProto(f *Fired) *chimepb.Fired {
	return &chimepb.Fired{
		AlarmId:      f.AlarmID,
		Kind:         f.Kind,
		RegisteredAt: f.RegisteredAt.UnixNano(),
	}
}

// FiredFromProto converts a wire message back to the domain payload.
func FiredFromProto(pb *chimepb.Fired) *Fired {
	return &Fired{
		AlarmID:      pb.GetAlarmId(),
		Kind:         pb.GetKind(),
		RegisteredAt: time.Unix(0, pb.GetRegisteredAt()).UTC(),
	}
}
