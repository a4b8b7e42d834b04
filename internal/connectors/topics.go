package connectors

const (
	TopicConnStatus   = "conn.status"
	TopicDeviceStatus = "device.status"
	TopicCrashData    = "device.crash_data"
	TopicRawFrameIn   = "raw.frame.in"
	TopicRawFrameOut  = "raw.frame.out"
)
