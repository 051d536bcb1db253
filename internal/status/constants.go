// internal/status/constants.go
package status

// Heart-rate status block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotState holds the wear/stabilization state code.
const SlotState = 0

// SlotHeartRateX10 holds the reported heart rate in tenths of BPM.
const SlotHeartRateX10 = 1

// SlotBattery holds the last battery level in percent (BatteryUnknown if none).
const SlotBattery = 2

// SlotSampleCount holds the number of samples in the last window.
const SlotSampleCount = 3

// SlotStableCycles holds the stabilization counter.
const SlotStableCycles = 4

// SlotNoiseX100 holds the motion noise score in hundredths.
const SlotNoiseX100 = 5

// SlotOrder holds the detrend polynomial order used.
const SlotOrder = 6

// SlotCycleCounter holds the low 16 bits of the cycle sequence (wraps).
const SlotCycleCounter = 7

// SlotErrorCode holds the last cycle error code.
const SlotErrorCode = 8

// LiveSlots is the number of slots carrying live values (0..LiveSlots-1).
const LiveSlots = 9

// ---- RESERVED RANGE ----

// Slots 9..10 are reserved for future use.
const SlotReservedStart = 9
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// BatteryUnknown is written until the device reports a battery frame.
const BatteryUnknown uint16 = 0xFFFF

// ---- STATE CODES ----

// StateUnknown represents boot, before the first cycle.
const StateUnknown uint16 = 0

// StateNotWorn represents a sensor that is not on the wrist.
const StateNotWorn uint16 = 1

// StateStabilizing represents a worn sensor that is still calibrating.
const StateStabilizing uint16 = 2

// StateActive represents a stabilized sensor reporting heart rate.
const StateActive uint16 = 3

// ---- ERROR CODES ----

// ErrorNone: last cycle analyzed (or nothing to analyze).
const ErrorNone uint16 = 0

// ErrorSingularFit: detrend failed; heart rate is the retained estimate.
const ErrorSingularFit uint16 = 1

// ErrorOther: any other analysis failure.
const ErrorOther uint16 = 2
